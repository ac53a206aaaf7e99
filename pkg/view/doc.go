// Package view defines the view model handed back to the hosting MVC
// framework and the two-shape result produced by the dispatch phase. Populate
// folds either shape into an existing view model in place.
package view
