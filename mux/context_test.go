// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package mux

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/search?q=trail&page=2", nil)
	c := NewTestContext(httptest.NewRecorder(), req)

	assert.Equal(t, "trail", c.QueryParam("q"))
	assert.Equal(t, "2", c.QueryParam("page"))
	assert.Empty(t, c.QueryParam("missing"))
	// Cached result, safe to read repeatedly.
	assert.Equal(t, c.QueryParams(), c.QueryParams())
}

func TestContextHeader(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "1234")
	w := httptest.NewRecorder()
	c := NewTestContext(w, req)

	assert.Equal(t, "1234", c.Header("X-Request-Id"))
	c.SetHeader("X-Served-By", "mux")
	assert.Equal(t, "mux", w.Header().Get("X-Served-By"))
}

func TestContextString(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	c := NewTestContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, c.String(http.StatusTeapot, "%d spouts", 1))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "1 spouts", w.Body.String())
	assert.Equal(t, mimeTextPlainCharsetUTF8, w.Header().Get(headerContentType))
	assert.Equal(t, http.StatusTeapot, c.Writer().Status())
	assert.Equal(t, len("1 spouts"), c.Writer().Size())
	assert.True(t, c.Writer().Written())
}

func TestContextBlob(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	c := NewTestContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, c.Blob(http.StatusOK, "application/json", []byte(`{"ok":true}`)))
	assert.Equal(t, "application/json", w.Header().Get(headerContentType))
	assert.Equal(t, `{"ok":true}`, w.Body.String())
}

func TestContextClone(t *testing.T) {
	t.Parallel()

	m, err := New()
	require.NoError(t, err)

	var clone *Context
	require.NoError(t, onlyError(m.Handle(http.MethodGet, "/users/{id}", func(c *Context) {
		_ = c.String(http.StatusOK, "ok")
		clone = c.Clone()
	})))

	m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/7", nil))

	require.NotNil(t, clone)
	assert.Equal(t, "7", clone.Var("id"))
	assert.Equal(t, "/users/{id}", clone.Pattern())
	assert.Equal(t, http.StatusOK, clone.Writer().Status())
	_, err = clone.Writer().Write([]byte("nope"))
	assert.ErrorIs(t, err, ErrDiscardedResponseWriter)
}

func TestWrapH(t *testing.T) {
	t.Parallel()

	m, err := New()
	require.NoError(t, err)
	require.NoError(t, onlyError(m.Handle(http.MethodGet, "/users/{id}", WrapH(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(VarsFromContext(r.Context()).Get("id")))
	})))))

	w := httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/21", nil))
	assert.Equal(t, "21", w.Body.String())
}

func TestWrapF(t *testing.T) {
	t.Parallel()

	m, err := New()
	require.NoError(t, err)
	require.NoError(t, onlyError(m.Handle(http.MethodGet, "/static", WrapF(func(w http.ResponseWriter, r *http.Request) {
		assert.Nil(t, VarsFromContext(r.Context()))
		w.WriteHeader(http.StatusAccepted)
	}))))

	w := httptest.NewRecorder()
	m.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
}
