package engine

import "reflect"

// deepCopy returns a copy of v that shares no mutable memory with it.
// Pointers, slices, maps, arrays, interfaces and exported struct fields are
// copied recursively. Unexported struct fields are copied shallowly; types
// holding references in unexported fields should implement Cloner. Channels
// and funcs are shared. Shared and cyclic references are preserved: each
// distinct pointer, map or slice is copied once.
func deepCopy[T any](v T) T {
	src := reflect.ValueOf(&v).Elem()
	dst := reflect.New(src.Type()).Elem()
	c := copier{seen: make(map[visit]reflect.Value)}
	c.copyValue(dst, src)
	return dst.Interface().(T)
}

// visit identifies a reference already copied.
type visit struct {
	ptr uintptr
	typ reflect.Type
	len int
}

type copier struct {
	seen map[visit]reflect.Value
}

func (c *copier) copyValue(dst, src reflect.Value) {
	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() {
			return
		}
		v := visit{ptr: src.Pointer(), typ: src.Type()}
		if p, ok := c.seen[v]; ok {
			dst.Set(p)
			return
		}
		p := reflect.New(src.Elem().Type())
		c.seen[v] = p
		c.copyValue(p.Elem(), src.Elem())
		dst.Set(p)
	case reflect.Slice:
		if src.IsNil() {
			return
		}
		v := visit{ptr: src.Pointer(), typ: src.Type(), len: src.Len()}
		if s, ok := c.seen[v]; ok && src.Len() > 0 {
			dst.Set(s)
			return
		}
		s := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		c.seen[v] = s
		for i := 0; i < src.Len(); i++ {
			c.copyValue(s.Index(i), src.Index(i))
		}
		dst.Set(s)
	case reflect.Map:
		if src.IsNil() {
			return
		}
		v := visit{ptr: src.Pointer(), typ: src.Type()}
		if m, ok := c.seen[v]; ok {
			dst.Set(m)
			return
		}
		m := reflect.MakeMapWithSize(src.Type(), src.Len())
		c.seen[v] = m
		iter := src.MapRange()
		for iter.Next() {
			val := reflect.New(iter.Value().Type()).Elem()
			c.copyValue(val, iter.Value())
			m.SetMapIndex(iter.Key(), val)
		}
		dst.Set(m)
	case reflect.Array:
		for i := 0; i < src.Len(); i++ {
			c.copyValue(dst.Index(i), src.Index(i))
		}
	case reflect.Interface:
		if src.IsNil() {
			return
		}
		inner := reflect.New(src.Elem().Type()).Elem()
		c.copyValue(inner, src.Elem())
		dst.Set(inner)
	case reflect.Struct:
		dst.Set(src)
		for i := 0; i < src.NumField(); i++ {
			if dst.Field(i).CanSet() {
				c.copyValue(dst.Field(i), src.Field(i))
			}
		}
	default:
		dst.Set(src)
	}
}
