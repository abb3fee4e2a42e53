package protocol

// HeaderField is one key/value pair in wire order.
type HeaderField struct {
	Key   string
	Value string
}

// HeaderMap is an insertion-ordered header mapping. Setting an existing key
// overwrites its value in place, keeping the original position, so wire
// output is deterministic.
type HeaderMap struct {
	fields []HeaderField
	index  map[string]int
}

// Set stores value under key, last write wins.
func (m *HeaderMap) Set(key, value string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.fields[i].Value = value
		return
	}
	m.index[key] = len(m.fields)
	m.fields = append(m.fields, HeaderField{Key: key, Value: value})
}

// Get returns the value stored under key.
func (m *HeaderMap) Get(key string) (string, bool) {
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.fields[i].Value, true
}

// Len returns the number of distinct keys.
func (m *HeaderMap) Len() int { return len(m.fields) }

// Fields returns the pairs in insertion order. The slice is shared; callers
// must not mutate it.
func (m *HeaderMap) Fields() []HeaderField { return m.fields }
