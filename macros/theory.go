package macros

const Theory = `
# Macro Conventions

Every macro starts and ends on its origin cell. Offsets are relative to the origin.

- Scratch cells named by a macro must be zero on entry and are zero again on exit.
- Bodies passed to a macro start and end on the cell the macro documents,
  usually the origin or a flag cell, and must not disturb the macro's scratch cells.
- Control flow is built only from loops: a cell set to 1 and cleared by the
  body that runs is how a branch is taken exactly once.

## Stack

A stack of capacity C occupies C+2 cells starting at its temp cell:

	[temp, 1 x (C-depth), 0, top, ..., bottom]

Free slots hold 1, a single 0 separates them from the values, and values are
stored right of the separator with the top first. Push expects the value in
temp; pop expects temp to be zero and leaves the value there. Values are
carried across the free slots one cell at a time, so each operation walks
O(C) cells and needs no scratch besides temp. Zero is a valid value.
`
