// Package loader reads operand tensors for the command line.
//
// Two formats are supported:
//   - JSON: one tensor document or an array of them
//   - SafeTensors: files written by internal/serialization or other tools
//
// A JSON document names the tensor, labels its axes and gives the values
// either as rows (rank 2) or as a shape plus flat row-major data:
//
//	{"name": "Adjacency", "indices": ["v", "u"], "rows": [[0, 1], [1, 0]]}
//	{"name": "H", "indices": ["v", "d"], "shape": [2, 3], "data": [1, 2, 3, 4, 5, 6]}
//	{"name": "bias", "indices": [], "data": [0.5]}
//
// Example:
//
//	// Auto-detect format by extension
//	tensors, err := loader.Open("graph.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
package loader
