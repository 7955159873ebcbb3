/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration of an extension.

Every extension keeps a single configuration object under the "_c:<pkg>" key.
It is created from the genesis file with InitConfig and can be changed later
by its owner with a message handled by UpdateConfigurationHandler.
*/
package gconf
