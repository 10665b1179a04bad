/*
Package proto implements the gcomm message envelope and its binary wire
protocol.

Message

A message on the wire looks like

	+----------------------+--------------+-------------+--------------+---------+
	| leading byte + flags | dest address | src address | header block | payload |
	+----------------------+--------------+-------------+--------------+---------+

	      |0|1|2|3|4|5|6|7|0|1|2|3|4|5|6|7|0|1|2|3|4|5|6|7|
	 byte |              0|              1|              2|
	------+---------------+---------------+---------------+
	    0 | leading       | flags                         |
	      +-+-+-----------+                               |
	      |D|S| reserved  |                               |
	------+-+-+-----------+-------------------------------+

	D: destination address present
	S: source address present

Address blocks are written by the address codec (see package addr) and
are present only when the corresponding presence bit is set. The header
block is a two-byte count N followed by N entries of

	+------------------+---------------+--------------+
	| protocol id (2B) | magic id (2B) | header bytes |
	+------------------+---------------+--------------+

where the header bytes are produced by the header type itself and the
magic id selects the factory used to reconstruct it on decode. The
payload trailing bytes depend on the payload variant: a raw payload
writes exactly its referenced bytes with no length prefix (the transport
frame bounds the message), an object payload writes a presence byte and,
when present, a two-byte magic id plus the object's encoded form.

Transient flags are never serialized.

Frame

For stream transports a message is wrapped into a frame:

	      |0|1|2|3|4|5|6|7|0|1|2|3|4|5|6|7|0|1|2|3|4|5|6|7|0|1|2|3|4|5|6|7|
	 byte |              0|              1|              2|              3|
	------+---------------+---------------+---------------+---------------+
	    0 | magic number                  | version       | payload kind  |
	------+-------------------------------+---------------+---------------+
	    4 | body size                                                     |
	------+---------------------------------------------------------------+

	magic number:
	  0x4743
	version:
	  1
	payload kind:
	  0: empty
	  1: raw buffer
	  2: object
*/
package proto
