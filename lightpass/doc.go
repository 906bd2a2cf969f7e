// Package lightpass draws the lights of a lights.Graph.
//
// Renderer implements lights.Consumer. For every container of the graph
// it selects a stencil configuration, binds one pipeline per shader batch
// and hands the individual draws to a LightDrawer supplied by the host:
//
//	factory, err := lightpass.NewHALPipelineFactory(device, shaders)
//	if err != nil {
//	    return err
//	}
//	r, err := lightpass.New(handle, factory, drawer,
//	    lightpass.WithClipVolumeDrawer(volumes))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	if err := graph.Execute(r); err != nil {
//	    return err
//	}
//
// # Stencil Usage
//
// Lights of group g are drawn where the stencil group bits equal g. A clip
// group is drawn in three steps: its instance volume is rasterized to set
// LightMaskBit on the covered pixels of the group, its lights are drawn
// where both match, and the volume is drawn again to clear the bit.
//
// # Pipelines
//
// Pipelines are created on demand by a PipelineFactory and kept in an LRU
// cache keyed by shader, stencil mode and target formats. Evicted pipelines
// are destroyed through the factory once the current frame is finished.
package lightpass
