// Package io reads and writes tier list drafts as files.
//
// A draft is stored as a display name plus up to five entries per category.
// Three encodings are supported and chosen by file extension:
//
//	# ada.toml
//	name = "Ada"
//
//	[entries]
//	S = ["Kenya AA", "Geisha", "", "", ""]
//	A = ["Yirgacheffe"]
//
// The same document in YAML (.yaml, .yml) or JSON (.json) uses the keys
// "name" and "entries". Category keys are accepted in either case.
//
// # Import
//
// [ReadFile] detects the format from the path; [Read] takes it explicitly.
// Every category comes back with exactly five slots: short lists are padded
// with blanks and longer ones truncated. Unknown category keys are rejected
// with an INVALID_CATEGORY error and unknown extensions with INVALID_FORMAT.
//
// # Export
//
// [WriteFile] and [Write] emit all six categories with five slots each, so a
// written draft doubles as a blank template for hand editing.
package io
