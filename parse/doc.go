package parse

// Parser for C source code carrying //@ and /*@ */ specification
// annotations. Nothing is preprocessed or type checked, the tree records
// the source as written.
//
//
// Glossary:
//
// Declarator
// ----------
//
// A declarator is the part of a declaration that specifies
// the name that is to be introduced into the program.
//
// e.g.
// unsigned int a, *b, **c, *const*d *volatile*e ;
//              ^  ^^  ^^^  ^^^^^^^^ ^^^^^^^^^^^
//
// Field declarators name struct members and type declarators name
// typedefs, they differ only in the identifier at their core.
//
// Abstract Declarator
// -------------------
//
// A declarator missing an identifier, as in casts and prototypes.
//
// e.g.
// (int (*)[4]) p
//       ^^^^^
//
// Type name oracle
// ----------------
//
// Whether T * x; declares x or multiplies T by x depends on what T names.
// The parser tracks typedef names per scope and asks. Names it never saw
// are decided by looking ahead, preferring a declaration.
//
// Annotation
// ----------
//
// A comment opened with //@ or /*@. Its content is a contract
// (With ... Require ... Ensure ...), an assertion over the heap, a loop
// invariant or a declaration for the proof assistant. Assertions have
// their own operators, binders and precedence table.
//
// e.g.
// int f(int *p) /*@ With v Require data_at(p, v) Ensure __return == v */
