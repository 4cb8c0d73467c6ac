package render

// Band is a half-open range of image rows [Start, End).
type Band struct {
	Start, End int
}

// Empty reports whether the band has no rows. Inverted bands are empty.
func (b Band) Empty() bool {
	return b.Start >= b.End
}

// Rows returns the number of rows in b.
func (b Band) Rows() int {
	if b.Empty() {
		return 0
	}
	return b.End - b.Start
}

// Partition splits height rows into workers bands of height/workers rows.
// The last band always ends at height and so takes all remainder rows.
// If workers > height every band but the last is empty.
func Partition(height, workers int) []Band {
	if workers < 1 {
		return nil
	}
	slice := height / workers
	bands := make([]Band, workers)
	for i := range bands {
		bands[i].Start = i * slice
		if i == workers-1 {
			bands[i].End = height
		} else {
			bands[i].End = (i + 1) * slice
		}
	}
	return bands
}

// BalancedPartition is like Partition, but the height%workers remainder rows
// go one each to the first bands instead of all to the last one.
func BalancedPartition(height, workers int) []Band {
	if workers < 1 {
		return nil
	}
	slice, rem := height/workers, height%workers
	bands := make([]Band, workers)
	start := 0
	for i := range bands {
		rows := slice
		if i < rem {
			rows++
		}
		bands[i] = Band{Start: start, End: start + rows}
		start += rows
	}
	return bands
}
