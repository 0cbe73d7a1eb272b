// Package watch notifies the application when files change below a directory.
//
// A Service holds a single watch slot. Starting a watch on a new directory
// stops the previous one first, so switching the open notes folder never
// leaves two watchers running. Events are forwarded to every subscriber:
//
//	svc := watch.NewService(watch.Config{Logger: log.Logger})
//	defer svc.Close()
//
//	unsubscribe := svc.Subscribe(func(event watch.ChangeEvent) {
//		reloadNotes()
//	})
//	defer unsubscribe()
//
//	if err := svc.StartWatch(root); err != nil {
//		log.Fatal().Err(err).Msg("Failed to watch notes")
//	}
package watch
