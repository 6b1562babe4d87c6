// Package canvas rasterizes contour maps onto a character grid for ASCII
// export and the terminal preview.
package canvas
