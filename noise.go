// SPDX-License-Identifier: EPL-2.0

package soloud

import "github.com/ik5/soloud/internal/native"

// Noise is an endless noise generator.
type Noise struct {
	audioSource
}

// NewNoise creates a white noise source.
func NewNoise() (*Noise, error) {
	n := &Noise{}
	if err := acquire(n, &n.handle, "Noise", native.NoiseCreate, native.NoiseDestroy); err != nil {
		return nil, err
	}
	return n, nil
}

// SetType changes the color of voices started afterwards.
func (n *Noise) SetType(t NoiseType) {
	native.NoiseSetType(n.raw(), int32(t))
}
