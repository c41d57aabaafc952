// Package archive unpacks archive files into a destination directory.
//
// Formats are identified by github.com/mholt/archives from the file name and
// header bytes, so zip, tar, compressed tarballs, and single-file compressed
// streams (.gz and friends) are all handled. Entries are confined to the
// destination: absolute paths and parent traversal are rejected, links and
// special files are skipped, and the total extracted size can be capped.
package archive
