package seekpager

// Package seekpager provides keyset (seek) pagination with forward and
// backward continuation tokens.
//
// Overview
//
// A page is addressed by the values of the configured columns on the row at
// its edge rather than by an offset. Given columns (C1, C2, ... Cn) and the
// reference values (V1, V2, ... Vn) the next page is selected by
//
//	(C1 > V1) OR (C1 = V1 AND C2 > V2) OR ... OR (C1 = V1 AND ... AND Cn > Vn)
//
// with > turning into < for descending columns and for backward scans. The
// last column must be unique across rows (usually the primary key).
//
// Key concepts
//   - Paginator: orchestrates ordering, boundary filtering, limits and token
//     minting over an Executor.
//   - Columns: multi-column ordering with explicit directions and kinds.
//   - Token: scan direction plus type-tagged reference values, serialized as
//     base64 JSON by default.
//   - Predicate: backend independent boundary filter (Compare, And, Or),
//     lowered to gorm clauses, raw SQL or evaluated in memory.
//   - Executor: GORMExecutor for gorm queries, SliceExecutor for in-memory
//     rows.
//   - Page: runs a page and mints previous/next tokens only when such pages
//     exist.
//
// Usage
//
//	pager := seekpager.NewGORMPaginator[User](seekpager.Getters[User]{
//		"age": func(u User) any { return u.Age },
//		"id":  func(u User) any { return u.ID },
//	}).
//		WithLimit(20).
//		WithAscending("age", seekpager.KindInt).
//		WithAscending("id", seekpager.KindUint)
//
//	page, err := pager.Page(ctx, db.Model(&User{}), req.Token)
//
// See examples/ for runnable programs.
