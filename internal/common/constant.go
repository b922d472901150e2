package common

// DefaultPort is the TCP port the server listens on when none is given.
const DefaultPort = 5555

// SaltSize is the number of random bytes in a per-user password salt.
const SaltSize = 16
