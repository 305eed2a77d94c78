// Package generator defines the content-generator collaborator used by the
// worker units and ships a browser HTTP header generator implementing it.
//
// Worker units only depend on the Factory and Generator interfaces; the
// header generator, its option tables and the preset set are one concrete
// implementation that makes the headergen binary runnable.
package generator
