// Package sink writes rendered figures and run artifacts to disk.
//
// A run produces one PNG per figure ([WritePNG]), and optionally a JSON
// [Manifest] describing every file and a contact sheet
// ([ContactSheet]) tiling thumbnails of all figures into one image for
// quick review.
//
// Files are written to a temporary name in the destination directory and
// renamed into place, so a crashed run never leaves a truncated PNG behind.
package sink
