// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package alertuc

import (
	"errors"
	"fmt"
	"time"
)

// Option is a functional option for the proximity alerts use case.
type Option func(uc *UseCase) error

// WithRefreshTimeout option bounds one whole refresh cycle with the
// given timeout, overriding DefaultRefreshTimeout. This option may be
// passed to the New() function.
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(uc *UseCase) error {
		if d := int64(timeout); d <= 0 {
			return fmt.Errorf("timeout (%d) is not positive", d)
		}
		if uc.timeout != 0 {
			return errors.New("timeout is already configured")
		}
		uc.timeout = timeout
		return nil
	}
}

// WithDispatchDelay option postpones the delivery of scheduled alerts
// by the given delay, overriding DefaultDispatchDelay. This option may
// be passed to the New() function.
func WithDispatchDelay(delay time.Duration) Option {
	return func(uc *UseCase) error {
		if d := int64(delay); d <= 0 {
			return fmt.Errorf("delay (%d) is not positive", d)
		}
		if uc.delay != 0 {
			return errors.New("delay is already configured")
		}
		uc.delay = delay
		return nil
	}
}
