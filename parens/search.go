package parens

import "fmt"

// FwdSearch returns min{j > i : excess(j) == excess(i) + d}, scanning by
// block: the containing block of i is finished directly, then whole
// blocks are skipped in O(1) via their precomputed [min,max] excess
// range (valid because excess changes by exactly ±1 per step, so every
// integer between a block's min and max is attained somewhere in it).
// i == -1 is allowed, with the convention excess(-1) == 0.
func (bp *BalancedParentheses) FwdSearch(i, d int) (int, error) {
	if i < -1 || i >= bp.n {
		return 0, fmt.Errorf("%w: FwdSearch index %d", ErrDomain, i)
	}
	target := d
	if i != -1 {
		target += bp.excessRaw(i)
	}
	if j, ok := bp.scanForward(i+1, target); ok {
		return j, nil
	}
	return 0, fmt.Errorf("%w: excess %d after %d", ErrNotFound, target, i)
}

func (bp *BalancedParentheses) scanForward(from, target int) (int, bool) {
	if from >= bp.n {
		return 0, false
	}
	startBlock := from / bp.blockSize
	blockEnd := (startBlock + 1) * bp.blockSize
	if blockEnd > bp.n {
		blockEnd = bp.n
	}
	for j := from; j < blockEnd; j++ {
		if bp.excessRaw(j) == target {
			return j, true
		}
	}
	for b := startBlock + 1; b < len(bp.blockMin); b++ {
		if target < bp.blockMin[b] || target > bp.blockMax[b] {
			continue
		}
		lo := b * bp.blockSize
		hi := lo + bp.blockSize
		if hi > bp.n {
			hi = bp.n
		}
		for j := lo; j < hi; j++ {
			if bp.excessRaw(j) == target {
				return j, true
			}
		}
	}
	return 0, false
}

// BwdSearch returns max{j < i : excess(j) == excess(i) + d}, with the
// convention excess(-1) == 0 so a result of -1 can be returned when
// target == 0 and no in-range position matches. i == len(bp) is
// allowed, with the convention excess(len(bp)) == 0 used as the probe
// excess.
func (bp *BalancedParentheses) BwdSearch(i, d int) (int, error) {
	if i < 0 || i > bp.n {
		return 0, fmt.Errorf("%w: BwdSearch index %d", ErrDomain, i)
	}
	target := d
	if i != bp.n {
		target += bp.excessRaw(i)
	}
	if j, ok := bp.scanBackward(i-1, target); ok {
		return j, nil
	}
	if target == 0 {
		return -1, nil
	}
	return 0, fmt.Errorf("%w: excess %d before %d", ErrNotFound, target, i)
}

func (bp *BalancedParentheses) scanBackward(from, target int) (int, bool) {
	if from < 0 {
		return 0, false
	}
	startBlock := from / bp.blockSize
	blockStart := startBlock * bp.blockSize
	for j := from; j >= blockStart; j-- {
		if bp.excessRaw(j) == target {
			return j, true
		}
	}
	for b := startBlock - 1; b >= 0; b-- {
		if target < bp.blockMin[b] || target > bp.blockMax[b] {
			continue
		}
		lo := b * bp.blockSize
		hi := lo + bp.blockSize
		if hi > bp.n {
			hi = bp.n
		}
		for j := hi - 1; j >= lo; j-- {
			if bp.excessRaw(j) == target {
				return j, true
			}
		}
	}
	return 0, false
}

func (bp *BalancedParentheses) checkRange(i, j int) error {
	if i < 0 || j < 0 || i >= bp.n || j >= bp.n {
		return fmt.Errorf("%w: range [%d,%d] out of bounds", ErrDomain, i, j)
	}
	if i > j {
		return fmt.Errorf("%w: range [%d,%d] has i > j", ErrDomain, i, j)
	}
	return nil
}

func (bp *BalancedParentheses) blockBounds(b int) (int, int) {
	lo := b * bp.blockSize
	hi := lo + bp.blockSize
	if hi > bp.n {
		hi = bp.n
	}
	return lo, hi
}

// FirstMin returns the position in [i, j] of the leftmost minimum
// excess.
func (bp *BalancedParentheses) FirstMin(i, j int) (int, error) {
	if err := bp.checkRange(i, j); err != nil {
		return 0, err
	}
	bestPos, bestVal := i, bp.excessRaw(i)
	pos := i + 1
	for pos <= j {
		blockIdx := pos / bp.blockSize
		lo, hi := bp.blockBounds(blockIdx)
		if lo == pos && hi-1 <= j && bp.blockMin[blockIdx] >= bestVal {
			pos = hi
			continue
		}
		limit := hi
		if j+1 < limit {
			limit = j + 1
		}
		for ; pos < limit; pos++ {
			if e := bp.excessRaw(pos); e < bestVal {
				bestVal, bestPos = e, pos
			}
		}
	}
	return bestPos, nil
}

// FirstMax returns the position in [i, j] of the leftmost maximum
// excess.
func (bp *BalancedParentheses) FirstMax(i, j int) (int, error) {
	if err := bp.checkRange(i, j); err != nil {
		return 0, err
	}
	bestPos, bestVal := i, bp.excessRaw(i)
	pos := i + 1
	for pos <= j {
		blockIdx := pos / bp.blockSize
		lo, hi := bp.blockBounds(blockIdx)
		if lo == pos && hi-1 <= j && bp.blockMax[blockIdx] <= bestVal {
			pos = hi
			continue
		}
		limit := hi
		if j+1 < limit {
			limit = j + 1
		}
		for ; pos < limit; pos++ {
			if e := bp.excessRaw(pos); e > bestVal {
				bestVal, bestPos = e, pos
			}
		}
	}
	return bestPos, nil
}

// CountMin returns the number of positions in [i, j] attaining the
// minimum excess over that range.
func (bp *BalancedParentheses) CountMin(i, j int) (int, error) {
	if err := bp.checkRange(i, j); err != nil {
		return 0, err
	}
	minPos, _ := bp.FirstMin(i, j)
	minVal := bp.excessRaw(minPos)

	count := 0
	pos := i
	for pos <= j {
		blockIdx := pos / bp.blockSize
		lo, hi := bp.blockBounds(blockIdx)
		if lo == pos && hi-1 <= j {
			if bp.blockMin[blockIdx] == minVal {
				count += bp.blockMinCount[blockIdx]
			}
			pos = hi
			continue
		}
		limit := hi
		if j+1 < limit {
			limit = j + 1
		}
		for ; pos < limit; pos++ {
			if bp.excessRaw(pos) == minVal {
				count++
			}
		}
	}
	return count, nil
}

// SelectMin returns the position (1-indexed k) of the k-th minimum
// excess within [i, j].
func (bp *BalancedParentheses) SelectMin(i, j, k int) (int, error) {
	if err := bp.checkRange(i, j); err != nil {
		return 0, err
	}
	if k <= 0 {
		return 0, fmt.Errorf("%w: k=%d", ErrDomain, k)
	}
	minPos, _ := bp.FirstMin(i, j)
	minVal := bp.excessRaw(minPos)

	remaining := k
	pos := i
	for pos <= j {
		blockIdx := pos / bp.blockSize
		lo, hi := bp.blockBounds(blockIdx)
		if lo == pos && hi-1 <= j {
			if bp.blockMin[blockIdx] == minVal {
				if remaining <= bp.blockMinCount[blockIdx] {
					for idx := lo; idx < hi; idx++ {
						if bp.excessRaw(idx) == minVal {
							remaining--
							if remaining == 0 {
								return idx, nil
							}
						}
					}
				}
				remaining -= bp.blockMinCount[blockIdx]
			}
			pos = hi
			continue
		}
		limit := hi
		if j+1 < limit {
			limit = j + 1
		}
		for ; pos < limit; pos++ {
			if bp.excessRaw(pos) == minVal {
				remaining--
				if remaining == 0 {
					return pos, nil
				}
			}
		}
	}
	return 0, fmt.Errorf("%w: range has no minrank %d", ErrDomain, k)
}
