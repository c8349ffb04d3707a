// Package jsonlite implements a minimal JSON value type with a strict
// recursive-descent parser and canonical serializer.
//
// It exists solely for the message bridge, which must re-serialize whatever
// value the hosted content placed in the "data" field without interpreting
// it. The rest of the codebase uses sonic for ordinary struct decoding.
//
// Supported grammar: string (with \n \r \t \\ \" escapes), object, array,
// boolean, null, number (IEEE double). Trailing commas, duplicate object
// keys, and trailing garbage are parse errors; a failed parse returns no
// partial tree.
package jsonlite
