package pipeline

import "github.com/couchcryptid/auroral-oval/internal/domain"

// half is one side of the field split at the seam row.
type half struct {
	name   domain.Half
	field  domain.Field
	offset int
}

// splitHalves returns the east half (seam row to the end, offset by the seam)
// followed by the west half (first row through the seam row). The seam row is
// shared so the two rings meet.
func splitHalves(g domain.Grid, f domain.Field) []half {
	seam := g.Seam()
	rows, _ := f.Dims()
	return []half{
		{name: domain.East, field: f.Rows(seam, rows), offset: seam},
		{name: domain.West, field: f.Rows(0, seam+1), offset: 0},
	}
}
