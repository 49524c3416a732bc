// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"errors"
	"sync"
)

// Resource is something held for the duration of a scope.
type Resource interface {
	Acquire() error
	Release() error
}

// Optional runs fn inside r if cond holds, and bare otherwise.
//
// With cond true, r is acquired before fn and released after it on every
// exit path, including a panic in fn; a release error is joined with
// fn's error. With cond false, r is never touched.
func Optional(cond bool, r Resource, fn func() error) (err error) {
	if !cond {
		return fn()
	}
	if err := r.Acquire(); err != nil {
		return err
	}
	defer func() {
		if rerr := r.Release(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()
	return fn()
}

// ResourceFunc adapts a pair of functions to Resource. Nil funcs are no-ops.
type ResourceFunc struct {
	AcquireFunc func() error
	ReleaseFunc func() error
}

// Acquire calls AcquireFunc.
func (r ResourceFunc) Acquire() error {
	if r.AcquireFunc == nil {
		return nil
	}
	return r.AcquireFunc()
}

// Release calls ReleaseFunc.
func (r ResourceFunc) Release() error {
	if r.ReleaseFunc == nil {
		return nil
	}
	return r.ReleaseFunc()
}

// Lock adapts l to a Resource that locks on Acquire and unlocks on Release.
func Lock(l sync.Locker) Resource {
	return locker{l}
}

type locker struct{ l sync.Locker }

func (k locker) Acquire() error { k.l.Lock(); return nil }
func (k locker) Release() error { k.l.Unlock(); return nil }
