package magicpaper

import "sort"

// CurveMap is a map from integer horizontal offsets to vertical offsets,
// iterated in increasing key order. It holds the freehand curve drawn on a
// mid graph, where the user may sweep back and forth over the same x.
type CurveMap struct {
	keys   []int
	values map[int]float64
}

// NewCurveMap creates an empty CurveMap.
func NewCurveMap() *CurveMap {
	return &CurveMap{values: make(map[int]float64)}
}

// Set stores y at offset x, replacing any earlier sample there.
func (cm *CurveMap) Set(x int, y float64) {
	if _, exists := cm.values[x]; !exists {
		i := sort.SearchInts(cm.keys, x)
		cm.keys = append(cm.keys, 0)
		copy(cm.keys[i+1:], cm.keys[i:])
		cm.keys[i] = x
	}
	cm.values[x] = y
}

// Get retrieves the sample at offset x.
func (cm *CurveMap) Get(x int) (float64, bool) {
	y, ok := cm.values[x]
	return y, ok
}

// Delete removes the sample at offset x.
func (cm *CurveMap) Delete(x int) {
	if _, exists := cm.values[x]; !exists {
		return
	}
	delete(cm.values, x)
	i := sort.SearchInts(cm.keys, x)
	cm.keys = append(cm.keys[:i], cm.keys[i+1:]...)
}

// Keys returns the offsets in increasing order.
func (cm *CurveMap) Keys() []int {
	return append([]int(nil), cm.keys...)
}

// Iterate calls f for each sample in increasing key order.
func (cm *CurveMap) Iterate(f func(x int, y float64)) {
	for _, k := range cm.keys {
		f(k, cm.values[k])
	}
}

// Len returns the number of samples.
func (cm *CurveMap) Len() int {
	return len(cm.keys)
}

// Clone returns an independent copy.
func (cm *CurveMap) Clone() *CurveMap {
	c := &CurveMap{keys: append([]int(nil), cm.keys...), values: make(map[int]float64, len(cm.values))}
	for k, v := range cm.values {
		c.values[k] = v
	}
	return c
}
