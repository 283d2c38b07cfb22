package graphstore

// Depth-1 subgraph: the taxpayer, its invoices, and the returns/payments
// each invoice is reported in (1 hop from the invoice ring).
const subgraphDepth1Query = `
MATCH (t:Taxpayer {gstin: $gstin})
OPTIONAL MATCH (i:Invoice)-[:ISSUED_BY]->(t)
OPTIONAL MATCH (i)-[:REPORTED_IN]->(g1:GSTR1)
OPTIONAL MATCH (i)-[:VISIBLE_IN]->(g2b:GSTR2B)
OPTIONAL MATCH (i)-[:DECLARED_IN]->(g3b:GSTR3B)
OPTIONAL MATCH (i)-[:PAID_VIA]->(p:TaxPayment)
RETURN t, collect(DISTINCT i)   AS invoices,
       collect(DISTINCT g1)    AS gstr1s,
       collect(DISTINCT g2b)   AS gstr2bs,
       collect(DISTINCT g3b)   AS gstr3bs,
       collect(DISTINCT p)     AS payments
`

// Depth-2 subgraph: additionally pulls the counterparty taxpayers buying
// through those invoices.
const subgraphDepth2Query = `
MATCH (t:Taxpayer {gstin: $gstin})
OPTIONAL MATCH (i:Invoice)-[:ISSUED_BY]->(t)
OPTIONAL MATCH (i)-[:REPORTED_IN]->(g1:GSTR1)
OPTIONAL MATCH (i)-[:VISIBLE_IN]->(g2b:GSTR2B)
OPTIONAL MATCH (i)-[:DECLARED_IN]->(g3b:GSTR3B)
OPTIONAL MATCH (i)-[:PAID_VIA]->(p:TaxPayment)
OPTIONAL MATCH (buyer:Taxpayer {gstin: i.buyer_gstin})
RETURN t, collect(DISTINCT i)   AS invoices,
       collect(DISTINCT g1)    AS gstr1s,
       collect(DISTINCT g2b)   AS gstr2bs,
       collect(DISTINCT g3b)   AS gstr3bs,
       collect(DISTINCT p)     AS payments,
       collect(DISTINCT buyer) AS buyers
`

// Breadth-capped export. Ordering by label then natural id keeps repeated
// overview loads stable for a fixed graph.
const exportNodesQuery = `
MATCH (n)
WITH n, labels(n)[0] AS label,
     coalesce(n.gstin, n.invoice_id, n.return_id, n.payment_id) AS nid
WHERE nid IS NOT NULL
RETURN label, properties(n) AS props
ORDER BY label, nid
LIMIT $limit
`

const exportEdgesQuery = `
MATCH (a)-[r]->(b)
RETURN labels(a)[0] AS src_label, properties(a) AS src_props,
       type(r)      AS rel,
       labels(b)[0] AS dst_label, properties(b) AS dst_props
`

const statsNodesQuery = `
MATCH (n)
WITH labels(n)[0] AS label, count(n) AS cnt
RETURN label, cnt
ORDER BY cnt DESC
`

const statsRelsQuery = `
MATCH ()-[r]->()
WITH type(r) AS rel, count(r) AS cnt
RETURN rel, cnt
ORDER BY cnt DESC
`
