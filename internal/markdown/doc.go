// Package markdown bridges goldmark and the olist document tree. It parses
// source into a tree.Tree, runs the ordered-list conversion, prints the result
// back to markdown, and offers filesystem workflows (load, transform, write
// back) on top of that pipeline.
package markdown
