// Package pipeline post-processes compiled RNote documents before rendering.
//
// Stages run on the full HTML document produced by the compiler:
//   - theme injection: the theme CSS is added as a <style> block in <head>
//   - path rewriting: relative image and link paths become file:// URLs
//     resolved against the source file's directory
//
// PDF generation is handled separately by the root rnote package using
// headless Chrome (go-rod).
package pipeline
