// Package archive packages a documentation tree into a compressed zip file
// and computes a content digest over the finished archive.
//
// Hidden files and directories are excluded from traversal entirely. Entry
// names are slash-separated paths relative to the source root, in traversal
// order.
package archive
