// Package cypher implements the bidirectional codec between a directed
// property graph and the OpenCypher bulk-load dual-CSV convention.
//
// # Wire Format
//
// A graph is represented as two independent CSV tables. The vertex table
// carries a mandatory :ID column, one typed column per property, and an
// optional :LABEL:string[] column. The edge table carries mandatory
// :START_ID and :END_ID columns followed by typed property columns:
//
//	:ID,age:int,name:string,:LABEL:string[]
//	1,30,Alice,Person;Employee
//	2,,Bob,
//
//	:START_ID,:END_ID,since:int
//	1,2,2020
//
// Every non-structural column name is suffixed with a type tag from
// {int, float, string, boolean} or its []-suffixed array form. Array cells
// join their elements with ";". Fields containing the column delimiter,
// a quote, or a newline use standard CSV double-quote escaping.
//
// # Encoding
//
// [Write] and [Marshal] walk the graph's vertices and edges once each in
// two strictly separated phases: a scan pass that finalizes each column's
// single type tag, then an emission pass that renders rows. A column whose
// values disagree on type widens deterministically - int and float widen to
// float, any other conflict widens to string. Property columns are emitted
// in sorted name order so output is stable for a given graph.
//
// Values that cannot be represented (maps, mixed-type slices, channels, ...)
// fail with an UNSUPPORTED_TYPE error naming the offending key.
//
// # Decoding
//
// [Read], [ReadInto] and [Unmarshal] parse both headers first (a missing
// structural column or an unrecognized tag fails with MALFORMED_HEADER
// before any row is processed), then add every edge, then upsert every
// vertex. Edges are processed first so endpoint vertices referenced only by
// the edge table are created implicitly, with no properties and no labels.
// An empty cell always decodes to an absent property key, including for
// string columns: the format cannot distinguish an empty string from an
// absent value, and absent is the documented reading. Rows with an empty
// :ID, :START_ID or :END_ID, or with a column-count mismatch, fail the
// whole call with MALFORMED_ROW; there is no partial-row recovery.
//
// # Limitations
//
// The ";" array delimiter has no escape: a string array element containing
// ";" decodes as multiple elements. Bound the memory of a call by bounding
// the inputs - both tables are fully materialized, there is no streaming
// mode.
//
// The codec is stateless and retains no reference to the supplied graph or
// buffers after a call returns. Concurrent calls on independent graphs are
// safe.
package cypher
