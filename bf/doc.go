// Package bf implements the parser and executor for an eight instruction
// tape language.
//
// Source text is parsed into a Program, a tree of Instructions where each
// bracket pair becomes a Loop owning its body. A State holds the tape, the
// pointer and the I/O endpoints, and executes a Program by walking the tree.
//
// Cells are unsigned bytes that wrap on overflow. The tape starts with a
// single cell and grows one cell at a time to the right; the pointer never
// moves left of cell zero. Loops run their body once before testing the
// current cell, repeating until it reads zero after a full pass.
//
// Execution never fails: end of input and write errors leave the State as
// it was, apart from the instruction's own defined effects.
package bf
