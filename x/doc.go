/*
Package x contains the interfaces shared by all extensions and the helpers
to work with them.

Extensions live in sub packages. Each of them exposes handlers registered on
an app.Router and the query buckets of its models.
*/
package x
