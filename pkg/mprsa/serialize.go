package mprsa

import (
	"strconv"
	"strings"

	"cryptocore/pkg/bigint"
	"cryptocore/pkg/cryptoerr"
)

// ExportPublic renders "<n_hex>:<e_hex>", lowercase, unpadded, no prefix.
func (c *Context) ExportPublic() []byte {
	return []byte(c.N.ToHexString() + ":" + c.E.ToHexString())
}

// ExportPrivate renders "<p_hex>:<q_hex>:<r1_hex>:<r2_hex>:<b_decimal>".
func (c *Context) ExportPrivate() []byte {
	return []byte(strings.Join([]string{
		c.P.ToHexString(),
		c.Q.ToHexString(),
		c.R1.ToHexString(),
		c.R2.ToHexString(),
		strconv.Itoa(c.B),
	}, ":"))
}

// ImportPublic parses a wire-format public key into a fresh read-only
// Context suitable for Encrypt.
func ImportPublic(data []byte) (*Context, error) {
	fields := strings.Split(string(data), ":")
	if len(fields) != 2 {
		return nil, cryptoerr.New(cryptoerr.MalformedKey, "mprsa.ImportPublic", "expected \"n:e\"")
	}

	n, err := bigint.FromHexString(fields[0])
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, "mprsa.ImportPublic", "n", err)
	}
	e, err := bigint.FromHexString(fields[1])
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, "mprsa.ImportPublic", "e", err)
	}

	return &Context{
		KeySize: n.BitLen(),
		N:       n,
		E:       e,
	}, nil
}

// ImportPrivate parses a wire-format private key, recomputing p_power and n
// from the imported p, q and b.
func ImportPrivate(data []byte) (*Context, error) {
	fields := strings.Split(string(data), ":")
	if len(fields) != 5 {
		return nil, cryptoerr.New(cryptoerr.MalformedKey, "mprsa.ImportPrivate", "expected \"p:q:r1:r2:b\"")
	}

	p, err := bigint.FromHexString(fields[0])
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, "mprsa.ImportPrivate", "p", err)
	}
	q, err := bigint.FromHexString(fields[1])
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, "mprsa.ImportPrivate", "q", err)
	}
	r1, err := bigint.FromHexString(fields[2])
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, "mprsa.ImportPrivate", "r1", err)
	}
	r2, err := bigint.FromHexString(fields[3])
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, "mprsa.ImportPrivate", "r2", err)
	}
	b, err := strconv.Atoi(fields[4])
	if err != nil || b < 2 {
		return nil, cryptoerr.New(cryptoerr.MalformedKey, "mprsa.ImportPrivate", "b")
	}

	pPower := p.Pow(uint64(b - 1))
	n := pPower.Mul(q)

	return &Context{
		KeySize: n.BitLen(),
		B:       b,
		P:       p,
		Q:       q,
		PPower:  pPower,
		N:       n,
		E:       bigint.NewInt(65537),
		R1:      r1,
		R2:      r2,
	}, nil
}
