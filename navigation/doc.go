// Package navigation intercepts link, button and form activity inside a
// client-nav container and turns it into partial fetch requests.
//
// Enable attaches the listeners and returns a Disposer that detaches them.
// Every intercepted gesture is handed to a single Updater together with the
// request it describes; NewPatchUpdater is an Updater that fetches the
// request and patches the live document with the partial regions of the
// response:
//
//	doc, _ := dom.ParseString(page)
//	update := navigation.NewPatchUpdater(doc, navigation.HandlerFetcher(router))
//	dispose, err := navigation.Enable(doc, doc.Body(), "http://localhost:8000", update)
//	if err != nil {
//		return err
//	}
//	defer dispose()
//
//	doc.Click(dom.GetElementByID(doc.Root(), "next"))
package navigation
