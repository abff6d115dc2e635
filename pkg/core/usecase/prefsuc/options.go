// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package prefsuc

import (
	"errors"
	"fmt"
)

// Option is a functional option for the preferences use case.
type Option func(uc *UseCase) error

// WithDefaultRadius option overrides the radius which is reported
// while no radius preference is stored, instead of DefaultRadiusKm.
// This option may be passed to the New() function.
func WithDefaultRadius(km float64) Option {
	return func(uc *UseCase) error {
		if !validRadius(km) {
			return fmt.Errorf("radius (%v) is not positive", km)
		}
		if uc.defaultRadiusKm != 0 {
			return errors.New("default radius is already configured")
		}
		uc.defaultRadiusKm = km
		return nil
	}
}
