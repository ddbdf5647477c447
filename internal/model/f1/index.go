package f1

// Collision records two entities that normalised to the same lookup key.
// The later entity wins the index slot.
type Collision struct {
	Collection string `json:"collection"`
	Key        string `json:"key"`
	Kept       string `json:"kept"`
	Dropped    string `json:"dropped"`
}

// BuildIndex maps the normalised key of every item to its position in items.
// Empty keys are skipped. Duplicate keys keep the last item and are reported
// as collisions, labelled through name.
func BuildIndex[T any](collection string, items []T, key func(T) string, name func(T) string) (map[string]int, []Collision) {
	index := make(map[string]int, len(items))
	var collisions []Collision

	for i, item := range items {
		k := NormalizeKey(key(item))
		if k == "" {
			continue
		}
		if prev, ok := index[k]; ok {
			collisions = append(collisions, Collision{
				Collection: collection,
				Key:        k,
				Kept:       name(item),
				Dropped:    name(items[prev]),
			})
		}
		index[k] = i
	}

	return index, collisions
}
