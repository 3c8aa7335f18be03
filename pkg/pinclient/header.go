// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import "strings"

// HeaderField is one named, multi-valued header.
type HeaderField struct {
	Name   string
	Values []string
}

// Header is an ordered list of header fields. Names are case-sensitive:
// "X-Token" and "x-token" are distinct fields.
type Header []HeaderField

// Add appends value to the field called name, creating it at the end of the
// list when absent.
func (h *Header) Add(name, value string) {
	for i := range *h {
		if (*h)[i].Name == name {
			(*h)[i].Values = append((*h)[i].Values, value)
			return
		}
	}
	*h = append(*h, HeaderField{Name: name, Values: []string{value}})
}

// Set replaces the values of the field called name.
func (h *Header) Set(name string, values ...string) {
	for i := range *h {
		if (*h)[i].Name == name {
			(*h)[i].Values = append([]string(nil), values...)
			return
		}
	}
	*h = append(*h, HeaderField{Name: name, Values: append([]string(nil), values...)})
}

// Values returns the values of the field called name.
func (h Header) Values(name string) []string {
	for _, f := range h {
		if f.Name == name {
			return f.Values
		}
	}
	return nil
}

// Get returns the first value of the field called name, or "".
func (h Header) Get(name string) string {
	if v := h.Values(name); len(v) > 0 {
		return v[0]
	}
	return ""
}

// Clone returns a deep copy of h.
func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	out := make(Header, len(h))
	for i, f := range h {
		out[i] = HeaderField{Name: f.Name, Values: append([]string(nil), f.Values...)}
	}
	return out
}

// valuesFold returns the values of every field whose name matches name
// case-insensitively, in order.
func (h Header) valuesFold(name string) []string {
	var values []string
	for _, f := range h {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Values...)
		}
	}
	return values
}

// DefaultHeaderSeparator joins multiple values of a header that has no entry
// in the separator table.
const DefaultHeaderSeparator = ","

// DefaultHeaderSeparators returns the built-in per-header join separators.
// User-Agent product tokens are space separated.
func DefaultHeaderSeparators() map[string]string {
	return map[string]string{
		"User-Agent": " ",
	}
}

func joinHeaderValues(separators map[string]string, name string, values []string) string {
	sep, ok := separators[name]
	if !ok {
		sep = DefaultHeaderSeparator
	}
	return strings.Join(values, sep)
}
