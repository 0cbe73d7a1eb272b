// Package notes stores markdown notes as plain files inside a root directory.
//
// A note is identified by its folder (slash-separated, relative to the root)
// and its filename. There is no index: every listing walks the tree again, so
// files edited by other programs show up on the next call.
//
// Example usage:
//
//	repo := notes.NewNoteRepository(log.Logger)
//
//	if err := repo.SaveNote(root, "journal/today.md", "# Today\n"); err != nil {
//		log.Fatal().Err(err).Msg("Failed to save note")
//	}
//
//	all, err := repo.ListNotes(root)
//	if err != nil {
//		log.Fatal().Err(err).Msg("Failed to list notes")
//	}
//	for _, n := range all {
//		fmt.Println(n.Folder, n.Filename)
//	}
//
// Folders are managed by FolderRepository. Deleting a folder either removes
// everything beneath it or first moves its notes into the root, renaming on
// collision (a.md, a_1.md, a_2.md, ...).
package notes
