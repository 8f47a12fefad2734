// Package serialization stores labelled tensors in the SafeTensors format.
//
// SafeTensors is a plain container:
//
//	[8 bytes: header size (uint64 LE)]
//	[header: JSON object mapping tensor name to dtype, shape and data offsets]
//	[tensor data: raw little-endian bytes]
//
// Index labels have no place in the standard header, so they travel in the
// free-form "__metadata__" object under "indices.<tensor name>" as a
// comma-separated list. A SHA-256 of the data section is stored under
// "checksum" and verified on read when present. Files written by other tools
// load as well: F32 data is widened to float64 and tensors without stored
// labels get d0, d1, ...
//
// Example usage:
//
//	if err := serialization.SaveFile("graph.safetensors", []*tensor.Tensor{adjacency, features}, nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	tensors, meta, err := serialization.LoadFile("graph.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
package serialization
