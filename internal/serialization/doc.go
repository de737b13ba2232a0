// Package serialization saves and loads MLP parameters in the .mgrd
// checkpoint format.
//
//	Format Structure:
//	  [4 bytes: Magic "MGRD"]
//	  [4 bytes: Version (uint32 LE)]
//	  [4 bytes: Flags (uint32 LE)]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON metadata]
//	  [32 bytes: SHA-256 of the data section]
//	  [Data: one float64 LE per parameter]
//
// Example usage:
//
//	header := serialization.Header{ModelType: "MLP", Layers: model.Sizes()}
//	if err := serialization.Save("model.mgrd", model.StateValues(), header); err != nil {
//	    log.Fatal(err)
//	}
//
//	values, header, err := serialization.Load("model.mgrd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	model.LoadStateDict(values)
package serialization
