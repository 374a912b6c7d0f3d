// Package manifest defines the driver manifest fragment produced from a
// registry record and the Builder that derives it. Each configuration
// parameter becomes a Setting whose Kind is inferred from the shape of its
// value ranges alone: two ranges with a 0/1 first range become a checkbox,
// three or more become a dropdown, anything else a bounded number whose
// signedness is inferred from its byte size. Builders reside in
// internal/manifest but return the types defined here.
package manifest
