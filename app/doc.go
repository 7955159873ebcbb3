/*
Package app contains the glue that turns a set of extension handlers into a
single transaction processor: the message Router, the Decorator chain and the
genesis initializer chain. It also converts handler results into ABCI style
responses with registered error codes.
*/
package app
