package hex

// Disk returns all axial coordinates at distance <= r from center c.
func Disk(c Axial, r int) []Axial {
	if r < 0 {
		return nil
	}
	res := make([]Axial, 0, 1+3*r*(r+1))
	for q := -r; q <= r; q++ {
		for r2 := max(-r, -q-r); r2 <= min(r, -q+r); r2++ {
			res = append(res, c.Add(Axial{q, r2}))
		}
	}
	return res
}
