// Package lang implements foobar2000 title formatting: a small template
// language that renders track metadata into text.
//
// # Syntax
//
// A format string is a sequence of four kinds of expression:
//
//	text         literal text
//	%field%      the first value of a metadata field, or "?" if absent
//	[...]        a conditional section
//	$name(a,b)   a builtin function call; each argument is itself a sequence
//
// The characters % $ , [ ] < > ' ( ) / and line breaks are special. Any of
// them is literal when quoted in apostrophes ('%' or '[x]'), and '' is a
// literal apostrophe. Some special characters pass through unquoted where
// they cannot be mistaken for syntax: ( ) ] and , in top-level text, ( and ]
// in function arguments, ( ) and , inside conditionals. Line breaks in
// literal text are ignored, so calls may be spread over several lines, and
// // starts a comment that runs to the end of the line.
//
// # Evaluation
//
// Every expression evaluates to a [Value]: text plus a truth flag. Literals
// are true, present fields are true, absent fields are false. A sequence is
// true when any field or call in it is true; text alone does not count,
// except that a sequence of nothing but text is true. A conditional renders
// its body only when the body is true, which makes
//
//	[%artist% - ]%title%
//
// omit the separator for tracks without an artist.
//
// Builtins receive one Value per argument. String and arithmetic builtins
// are true when all their arguments are; logical builtins such as $if, $and
// and $eq compute truth themselves; metadata builtins ($meta, $meta_sep,
// $meta_num, $meta_test) and scratch variables ($get, $put, $puts) work on
// the [Environment] of the current run.
//
// # Usage
//
//	prog := lang.NewProgram()
//	if err := prog.Parse(ctx, "[%artist% - ]%title%"); err != nil {
//		return err
//	}
//
//	text, err := prog.RunWithMeta(ctx, lang.Metadata{
//		"artist": {"Blur"},
//		"title":  {"Song 2"},
//	})
//
// [ParseString] and [ParseReader] parse through a process-wide cache.
//
// # Errors
//
// Parsing fails with [ErrParse] or [ErrMaxDepthExceeded]. Running fails with
// [ErrUndefinedFunction], [ErrInvalidArgs], [ErrOutOfRange] or
// [ErrMaxDepthExceeded]; any error aborts the whole rendering. No input
// causes a panic.
package lang
