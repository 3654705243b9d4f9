// Package render draws tier lists as PNG images.
//
// # Overview
//
// Two renderers share a single draw-one-table primitive:
//
//   - [Table] renders one ranked list as a standalone table image.
//   - [Composite] renders a full [tier.Submission] as six tables on a
//     2-column by 3-row grid under a title banner.
//
// Both are pure: every call builds its own canvas and font faces, closes the
// faces before returning, and hands back the encoded PNG as a [bytes.Reader]
// positioned at offset 0.
//
//	img, err := render.Composite(sub)
//	if err != nil {
//	    return err
//	}
//	io.Copy(w, img)
//
// # Layout
//
// Grid slots and header colours come from [tier.Tiers]. Each grid cell is
// exactly half the grid width and a third of its height. A category without
// entries leaves its slot blank; slots never shift.
//
// Output is cropped to the drawn content plus a uniform padding, so the final
// image size depends on the title and table contents.
//
// [tier.Submission]: github.com/matzehuels/coffeetier/pkg/tier.Submission
// [tier.Tiers]: github.com/matzehuels/coffeetier/pkg/tier.Tiers
package render
