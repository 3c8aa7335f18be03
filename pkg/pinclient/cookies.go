// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/valyala/bytebufferpool"
)

const (
	cookieHeader    = "Cookie"
	setCookieHeader = "Set-Cookie"
)

var bufferPool bytebufferpool.Pool

// buildCookieHeader merges the jar's cookies for u with existing Cookie
// header values into one header value: "name=value;" per stored cookie,
// then "value;" per existing value, with the final ";" trimmed.
func buildCookieHeader(jar http.CookieJar, u *url.URL, existing []string) string {
	buf := bufferPool.Get()
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if jar != nil && u != nil {
		for _, c := range jar.Cookies(u) {
			_, _ = buf.WriteString(c.Name)
			_ = buf.WriteByte('=')
			_, _ = buf.WriteString(c.Value)
			_ = buf.WriteByte(';')
		}
	}
	for _, v := range existing {
		_, _ = buf.WriteString(v)
		_ = buf.WriteByte(';')
	}

	return strings.TrimRight(buf.String(), ";")
}

// storeCookies saves every parsable Set-Cookie value in header into jar
// against u.
func storeCookies(jar http.CookieJar, u *url.URL, header Header) {
	if jar == nil || u == nil {
		return
	}

	var cookies []*http.Cookie
	for _, line := range header.valuesFold(setCookieHeader) {
		c, err := http.ParseSetCookie(line)
		if err != nil {
			continue
		}
		cookies = append(cookies, c)
	}
	if len(cookies) > 0 {
		jar.SetCookies(u, cookies)
	}
}
