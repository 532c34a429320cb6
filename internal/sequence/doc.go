// Package sequence classifies MRI acquisition labels against a reference table
// of known protocols.
//
// A raw label recorded by scanner software (for example "3 WATER SAT_001") is
// reduced to a lookup key by NormalizeKey, matched against the ReferenceTable,
// and the matching ProtocolRecord drives four read-only queries: validity,
// standard display name, diffusion weighting and perfusion detection.
//
// Tables are loaded once (usually from liste_sequence_eurad.csv) and never
// mutated afterwards, so a Classifier may be shared freely between goroutines.
package sequence
