package geom

func thin(v []Vec2, tol float64) []Vec2 {
	worst := 0
	worstD := 0.0
	for i := 1; i < len(v)-1; i++ {
		d := linedist(v[i], v[0], v[len(v)-1])
		if d > worstD {
			worst = i
			worstD = d
		}
	}
	if worstD <= tol {
		return []Vec2{v[0], v[len(v)-1]}
	}
	lefts := thin(v[:worst+1], tol)
	rights := thin(v[worst:], tol)
	return append(lefts, rights[1:]...)
}

// ThinPolyline removes points from a polyline, with the guarantee
// that all removed points are within the given tolerance (distance)
// from the new polyline. Polylines with fewer than three points are
// returned unchanged.
func ThinPolyline(v []Vec2, tol float64) []Vec2 {
	if len(v) < 3 || tol <= 0 {
		return v
	}
	return thin(v, tol)
}
