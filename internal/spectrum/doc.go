// Package spectrum implements windowed 2D Fourier analysis: separable
// radix-2 FFT, optional window tapering (Hanning, Hamming, Blackman, Kaiser),
// Butterworth-style frequency-domain filtering, spectral statistics with
// radial band energies and dominant-peak detection, and spectrum rendering.
//
// # Preconditions
//
// The transform is iterative radix-2 Cooley-Tukey, so both image dimensions
// must be powers of two. Analyze fails fast with a *raster.DimensionError
// otherwise; it never pads or crops.
package spectrum
