/*
Package orm provides an easy to use db wrapper.

The state space is broken into prefixed sections called Buckets.

* Each bucket contains only one type of object.
* It has a primary index and may possess secondary indexes (1:1 or 1:N).
* Entities can be loaded one by one or through a secondary index.

Buckets and their indexes register themselves on a quorum.QueryRouter so
that the stored state can be inspected from the outside.
*/
package orm
