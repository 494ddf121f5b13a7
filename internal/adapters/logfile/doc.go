// Package logfile reads the lines owned by one byte range of a local log file
//
// Ownership rule:
// - A physical line belongs to the range that contains its first byte.
// - A reader whose range starts past 0 backs up one byte and throws away everything
//   through the first newline; that fragment (possibly just the newline) is owned by
//   the previous range.
// - It then hands out lines while the next line starts at or before the range end, so
//   the line crossing the end is read in full here and skipped by the next reader.
// - A final line missing its newline is returned with one appended, keeping fixed
//   offsets measured from line end valid.
package logfile
