// Package hover maps a cursor position to the labeled statistics of the
// nearest box.
//
// [Pick] scans every box of every visible trace, keeps the closest under
// the hover mode's distance function and expands the winner into labels.
// A box counts as hit when the cursor lies inside its position slot and
// inside its value range; every hit scores the same distance, so among
// overlapping boxes the last one scanned wins.
//
// The winner expands into one of:
//
//   - a single "normalization failed" label for a failed box
//   - a single reveal label when the cursor points at hidden outliers
//   - one label per distinct statistic value otherwise
//
// Pick reads finalized pass state only and is safe for concurrent use.
package hover
