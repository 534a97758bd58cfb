// Package domain models the statistical auroral oval and the extraction of
// its intensity boundaries as polygons.
//
// # Coordinate Frame
//
// Everything here lives in magnetic coordinates. Longitude is magnetic local
// time expressed in degrees (15 degrees per hour) and wrapped into [0, 360);
// latitude is geomagnetic latitude. No conversion to geographic coordinates
// is performed.
//
// # Grid
//
// The model is sampled on an outer product of two axes:
//
//	longitude: 0, 4, ..., 360 (91 samples), shifted by hour*15 and wrapped
//	latitude:  25.00, 25.25, ..., 89.75 (260 samples)
//
// Because 360 wraps to 0, the last longitude sample repeats the first. A
// field is a matrix with one row per longitude sample and one column per
// latitude sample.
//
// # Oval Model
//
// The oval is a Gaussian in latitude centred on a Kp-dependent centroid,
// with a width that varies with local time:
//
//	h  = h0 * (1 - rh*cos(lon))        h0 = (h1+h2)/2, rh = (h2-h1)/(h2+h1)
//	f  = f0 * (1 - rf*cos(lon))        f0 = (f1+f2)/2, rf = (f2-f1)/(f2+f1)
//	I  = f * exp(-((lat-phi0)/h)^2)
//
// h2 is the tabulated width for the Kp index and h1 = h2/3. phi0 is the
// tabulated centroid latitude. f1 and f2 are the noon and midnight
// brightness, both 1 by default, which makes rf zero.
//
// Kp tables (index 0 through 9):
//
//	centroid: 70.0 68.8 67.8 66.5 65.5 64.2 63.1 61.0 58.5 55.0
//	width:     1.5  2.8  4.2  5.5  7.0  8.2  9.9 12.0 15.0 18.5
//
// # Boundary Extraction
//
// The field is split at the seam row (row 45, longitude 180 at hour 0) into a
// west half [0, 45] and an east half [45, 90]; the seam row belongs to both.
// Each half is contoured at a threshold and must produce exactly two open
// paths: path 0 runs along the equatorward (southern) edge of the oval and
// path 1 along the poleward (northern) edge.
//
// Contour vertices are fractional (column, row) indices. Rows index
// longitude, columns index latitude; see [MapVertex]. The east half is
// contoured with a row offset of 45 so its indices land on the full grid.
//
// On the east half the final vertex of each path sits on row 90, whose
// wrapped longitude is 0. [PatchSeam] adds 360 to that last vertex only, so
// the polygon closes at 360 instead of folding back across the map.
//
// The two paths are stitched into one ring: the southern path in order, then
// the northern path reversed. See [Stitch].
package domain
