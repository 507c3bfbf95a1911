// Package digest computes deterministic content hashes for client-supplied values.
package digest

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"

	"github.com/aretw0/markov/pkg/domain"
)

// Of returns a 64-bit content hash of v.
//
// Values implementing domain.Hasher are trusted to hash themselves. Everything else is hashed by
// walking its value the way reflect.DeepEqual compares it: the dynamic type name and every field,
// exported or not, pointers followed to their targets, map entries independent of order. Values
// that DeepEqual reports equal hash equally; negative zero hashes as zero. Funcs and channels
// hash by identity.
func Of(v any) uint64 {
	if h, ok := v.(domain.Hasher); ok {
		return h.Hash()
	}
	w := newWalker(map[uintptr]bool{})
	w.value(reflect.ValueOf(v))
	return w.d.Sum64()
}

// Label returns the display form of v: its String method when available, %v otherwise.
func Label(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

type walker struct {
	d *xxhash.Digest
	// pointers on the current path, to stop at cycles
	path map[uintptr]bool
	buf  [8]byte
}

func newWalker(path map[uintptr]bool) *walker {
	return &walker{d: xxhash.New(), path: path}
}

func (w *walker) word(x uint64) {
	binary.LittleEndian.PutUint64(w.buf[:], x)
	_, _ = w.d.Write(w.buf[:])
}

func (w *walker) str(s string) {
	w.word(uint64(len(s)))
	_, _ = w.d.WriteString(s)
}

func (w *walker) float(f float64) {
	if f == 0 {
		f = 0
	}
	w.word(math.Float64bits(f))
}

func (w *walker) value(v reflect.Value) {
	if !v.IsValid() {
		w.str("<nil>")
		return
	}
	w.str(v.Type().String())

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			w.word(1)
		} else {
			w.word(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.word(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.word(v.Uint())
	case reflect.Float32, reflect.Float64:
		w.float(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		w.float(real(c))
		w.float(imag(c))
	case reflect.String:
		w.str(v.String())
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			w.str("nil")
			return
		}
		w.word(uint64(v.Len()))
		for i := range v.Len() {
			w.value(v.Index(i))
		}
	case reflect.Struct:
		for i := range v.NumField() {
			w.value(v.Field(i))
		}
	case reflect.Map:
		if v.IsNil() {
			w.str("nil")
			return
		}
		w.word(uint64(v.Len()))
		var sum uint64
		iter := v.MapRange()
		for iter.Next() {
			entry := newWalker(w.path)
			entry.value(iter.Key())
			entry.value(iter.Value())
			sum += entry.d.Sum64()
		}
		w.word(sum)
	case reflect.Pointer:
		if v.IsNil() {
			w.str("nil")
			return
		}
		p := v.Pointer()
		if w.path[p] {
			w.str("cycle")
			return
		}
		w.path[p] = true
		w.value(v.Elem())
		delete(w.path, p)
	case reflect.Interface:
		if v.IsNil() {
			w.str("nil")
			return
		}
		w.value(v.Elem())
	default:
		w.word(uint64(v.Pointer()))
	}
}
