/*
Package geiser implements the editor side of the Geiser↔STklos
protocol: translating abstract editor operations into single request
expressions, resolving the lexical module around a buffer position,
parsing reply envelopes back into display data, and driving a
synchronous connection to the runtime.

The protocol is strictly request/wait/response. The editor writes one
printed S-expression and blocks until it has read one printed reply
followed by a blank line; there is no cancellation and no concurrency
at this layer. Process spawning, prompt synchronization, and teardown
belong to the surrounding connection manager, which this package only
supplies with the prompt pattern and the startup handshake expression.
*/
package geiser
