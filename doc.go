/*

Package quorum defines interfaces used throughout the app, such as: storage,
transactions, handlers etc.
It also contains helpers to work with context, conditions and options.
Look into this package to get a brief overview of design decisions made around
interfaces and extension building blocks.

The threshold authorization engine itself lives in the x/multisig extension.

*/

package quorum
