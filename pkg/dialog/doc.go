// Package dialog implements a stack of dialogs as plain state: an ordered
// list of entries with z-index allocation, an open/closed/unmounted
// lifecycle, one-shot async results, and a subscribe/snapshot protocol for
// whatever draws them.
//
// A Store never renders anything. It keeps each entry's Renderer and hands
// out Controllers, per entry and per render, through NewController. A
// renderer container (see package dialogtea for Bubble Tea) subscribes to
// the store, builds the controllers and calls the renderers.
//
//	s := dialog.NewStore()
//	p, _ := s.OpenAsync(confirmView)
//	res, err := p.Wait(ctx)
//	if err == nil && res.OK {
//		// confirmed
//	}
//	res.Unmount()
//
// Close and Unmount are separate steps. A closed entry keeps its slot
// until it is unmounted, so the view can play an exit transition.
package dialog
