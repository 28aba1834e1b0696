// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonrw implements a streaming JSON decoder and encoder that work
// directly on a byte stream, without constructing a document tree.
//
// # Decoding
//
// The Decoder type is a pull parser: the caller walks the expected structure
// of the input, and the decoder consumes one piece at a time. Construct a
// decoder from an io.Reader and call the methods that match the shape of the
// input:
//
//	dec := jsonrw.NewDecoder(input)
//	for dec.BeginTable(); dec.TableHasNext(); {
//	   if dec.MatchKey("name") {
//	      name = dec.ReadString()
//	   } else if dec.MatchKey("size") {
//	      size = dec.ReadNumber()
//	   } else {
//	      dec.SkipMember()
//	   }
//	}
//	if err := dec.End(); err != nil {
//	   log.Fatalf("Decode failed: %v", err)
//	}
//
// Errors are sticky: the first failure is recorded and every later call does
// nothing and returns a zero value. This lets the caller decode a whole value
// and check the error once, with Err or End. A failed decoder cannot be
// resumed; use Reset to start over. The error has concrete type
// *jsonrw.SyntaxError, and reports the line and column of the failure along
// with an excerpt of the input:
//
//	1:17: error: missing comma before '"'
//	  1 | {"a": 1, "b": 2 "c": 3}
//	                      ^
//
// The grammar is strict about commas: elements of a table or array must be
// separated by exactly one comma, and a comma before a closing bracket is an
// error. Strings are treated as 8-bit bytes; only the escapes \" \\ \b \f \n
// \r \t are decoded, and a backslash followed by any other byte yields that
// byte.
//
// MatchKey peeks at the next key and consumes it only if it matches, so the
// same key may be tested several times. This requires the source to support
// seeking; see Source.
//
// Iterators are also available, either as explicit Iter values from Members
// and Elements, or as range functions:
//
//	for key := range dec.Keys() {
//	   ...
//	}
//
// # Encoding
//
// The Encoder type is the dual of Decoder: the caller emits the structure of
// the output in order, and the encoder inserts the separators.
//
//	enc := jsonrw.NewEncoder(output)
//	enc.BeginTable()
//	enc.WriteKeyString("name", "widget")
//	enc.WriteKeyFloat("size", 2.5)
//	enc.EndTable()
//	if err := enc.Finish(); err != nil {
//	   log.Fatalf("Write failed: %v", err)
//	}
//
// Output is compact, with no indentation. Unbalanced calls to the Begin and
// End methods are a bug in the caller, and cause a panic.
//
// # Walking
//
// The Walk function adapts a Decoder to an event-driven Handler, and
// Transcode uses this to copy a value from a Decoder to an Encoder.
//
// The methods of a Handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginTable, EndTable      | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | Key                       | "key": value
//	value      | String, Number, Bool, Null| "...", 1.5, true, false, null
package jsonrw
