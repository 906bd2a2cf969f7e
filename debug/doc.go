// Package debug renders a light graph traversal as an image.
//
// Visualizer implements lights.Consumer. It records one row per container
// visited and draws each row as a label followed by a bar per shader batch,
// with thin separators where the vertex array changes. The image shows at
// a glance how well a frame's lights batch.
//
//	v, err := debug.NewVisualizer()
//	if err != nil {
//	    return err
//	}
//	defer v.Close()
//	if err := graph.Execute(v); err != nil {
//	    return err
//	}
//	img := v.Render()
package debug
