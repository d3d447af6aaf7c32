package parse

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// What an identifier currently names.
type symbolKind int

const (
	symOrdinary symbolKind = iota + 1
	symTypeName
)

type scope struct {
	parent *scope
	kv     map[string]symbolKind
}

func (s *scope) lookup(k string) (symbolKind, error) {
	sym, ok := s.kv[k]
	if ok {
		return sym, nil
	}
	if s.parent != nil {
		return s.parent.lookup(k)
	}
	return 0, fmt.Errorf("%s is not defined", k)
}

func (s *scope) String() string {
	str := ""
	if s.parent != nil {
		str += s.parent.String() + "\n"
	}
	str += fmt.Sprintf("%v", s.kv)
	return str
}

func newScope(parent *scope) *scope {
	ret := &scope{}
	ret.parent = parent
	ret.kv = make(map[string]symbolKind)
	return ret
}

// undo is one oracle change. Either a scope switch (s is the scope to go
// back to) or a definition in s (had and old restore the previous entry).
type undo struct {
	s    *scope
	swap bool
	name string
	had  bool
	old  symbolKind
}

// oracle answers "is this identifier a type name right now". Every change
// is logged so a failed speculative parse can be rolled back exactly.
type oracle struct {
	cur *scope
	log []undo
	// sums[i] fingerprints the first i entries of log. Equal sums within
	// one epoch mean equal oracle states.
	sums  []uint64
	epoch int
}

func newOracle(typeNames []string) *oracle {
	o := &oracle{cur: newScope(nil), sums: []uint64{0}}
	for _, n := range typeNames {
		o.cur.kv[n] = symTypeName
	}
	return o
}

func (o *oracle) isType(name string) bool {
	k, err := o.cur.lookup(name)
	return err == nil && k == symTypeName
}

// isOrdinary reports whether name is known to be a variable, function or
// enumerator in the current scope.
func (o *oracle) isOrdinary(name string) bool {
	k, err := o.cur.lookup(name)
	return err == nil && k == symOrdinary
}

func (o *oracle) record(u undo, op byte, arg string) {
	h := fnv.New64a()
	var b [9]byte
	binary.LittleEndian.PutUint64(b[:8], o.sums[len(o.sums)-1])
	b[8] = op
	h.Write(b[:])
	h.Write([]byte(arg))
	o.log = append(o.log, u)
	o.sums = append(o.sums, h.Sum64())
}

func (o *oracle) define(name string, k symbolKind) {
	old, had := o.cur.kv[name]
	o.record(undo{s: o.cur, name: name, had: had, old: old}, byte(k), name)
	o.cur.kv[name] = k
}

func (o *oracle) push() {
	o.record(undo{s: o.cur, swap: true}, '{', "")
	o.cur = newScope(o.cur)
}

func (o *oracle) pop() {
	o.record(undo{s: o.cur, swap: true}, '}', "")
	o.cur = o.cur.parent
}

// reset returns to s, a scope saved earlier on the way down.
func (o *oracle) reset(s *scope) {
	if s == o.cur {
		return
	}
	depth := 0
	for t := s; t != nil; t = t.parent {
		depth++
	}
	o.record(undo{s: o.cur, swap: true}, '^', fmt.Sprint(depth))
	o.cur = s
}

func (o *oracle) mark() int {
	return len(o.log)
}

// state identifies the current oracle contents for memoized lookahead.
func (o *oracle) state() (epoch int, sum uint64) {
	return o.epoch, o.sums[len(o.sums)-1]
}

func (o *oracle) rollback(mark int) {
	for i := len(o.log) - 1; i >= mark; i-- {
		u := o.log[i]
		switch {
		case u.swap:
			o.cur = u.s
		case u.had:
			u.s.kv[u.name] = u.old
		default:
			delete(u.s.kv, u.name)
		}
	}
	o.log = o.log[:mark]
	o.sums = o.sums[:mark+1]
}

// commit drops the log, there is nothing left to roll back between top
// level items.
func (o *oracle) commit() {
	o.log = o.log[:0]
	o.sums = o.sums[:1]
	o.epoch++
}
