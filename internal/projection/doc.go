// Package projection reduces embedding vectors to 3D coordinates for
// visualization.
//
// Two strategies sit behind one Projector interface: a linear
// principal-component projection and an iterative t-SNE embedding. The
// strategy is selected by a pure function of the sample count, because the
// iterative technique is numerically unstable below four samples and its
// neighbourhood parameter can never exceed n-1.
package projection
